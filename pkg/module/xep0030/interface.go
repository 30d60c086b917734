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

package xep0030

import "github.com/jackal-xmpp/xrocket/pkg/router"

//go:generate moq -out sender.mock_test.go . sender
type sender interface {
	router.Sender
}

//go:generate moq -out feature_provider.mock_test.go . featureProvider
type featureProvider interface {
	Features() []string
}
