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

package auth

import (
	"github.com/go-ldap/ldap/v3"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
)

//go:generate moq -out repository.mock_test.go . authUserRepository:userRepositoryMock
type authUserRepository interface {
	repository.User
}

//go:generate moq -out ldap_conn.mock_test.go . ldapConn:ldapConnMock
type ldapConn interface {
	Bind(username, password string) error
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close()
}
