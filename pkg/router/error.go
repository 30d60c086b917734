// Copyright 2022 The xrocket Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import "errors"

var (
	// ErrResourceNotFound will be returned by Send method if destination resource does not match any of user's available resources.
	ErrResourceNotFound = errors.New("router: resource not found")

	// ErrUserNotAvailable will be returned by Send method in case no available resource was found.
	ErrUserNotAvailable = errors.New("router: user not available")

	// ErrCyclicChain will be returned by Chain when a router would become its own ancestor.
	ErrCyclicChain = errors.New("router: cyclic chain")
)
