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

package instance

import (
	"errors"
	"net"
	"os"

	"github.com/google/uuid"
)

const (
	envInstanceID = "XROCKET_INSTANCE_ID"
	envHostName   = "XROCKET_HOSTNAME"
)

const fallbackHostname = "localhost"

var (
	instID, hostname string
)

var (
	readCachedResults  = true
	interfaceAddresses = net.InterfaceAddrs
)

func init() {
	instID = getID()
	hostname = getHostname()
}

// ID returns local instance identifier. Used as the 'instance' label of every exported metric.
func ID() string {
	if readCachedResults {
		return instID
	}
	return getID()
}

// Hostname returns local instance host name.
func Hostname() string {
	if readCachedResults {
		return hostname
	}
	return getHostname()
}

func getID() string {
	if id := os.Getenv(envInstanceID); len(id) > 0 {
		return id
	}
	return uuid.New().String()
}

func getHostname() string {
	if fqdn := os.Getenv(envHostName); len(fqdn) > 0 {
		return fqdn
	}
	if ip, err := firstNonLoopbackIPv4(); err == nil {
		return ip
	}
	return fallbackHostname
}

func firstNonLoopbackIPv4() (string, error) {
	addresses, err := interfaceAddresses()
	if err != nil {
		return "", err
	}
	for _, addr := range addresses {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		return ipNet.IP.String(), nil
	}
	return "", errors.New("instance: no local ipv4 address")
}
