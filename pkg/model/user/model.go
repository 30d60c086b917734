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

package usermodel

import "encoding/json"

// User represents a user entity.
type User struct {
	Username string `json:"username"`
	Password struct {
		// SHA256 holds the base64 encoded PBKDF2-SHA256 derived key.
		SHA256         string `json:"sha256"`
		Salt           string `json:"salt"`
		IterationCount int    `json:"iteration_count"`
	} `json:"password"`
}

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (u *User) MarshalBinary() ([]byte, error) {
	return json.Marshal(u)
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (u *User) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, u)
}
