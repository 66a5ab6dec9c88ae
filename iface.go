//go:build linux

package posixsock

import (
	"net"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ifaceCacheSize bounds the name-to-index cache. Capture tools touch a
// handful of interfaces; anything beyond that just evicts.
const ifaceCacheSize = 16

var ifaceCache, _ = lru.New[string, int](ifaceCacheSize)

// interfaceIndex resolves a network interface name to its kernel index.
// Results are cached: SendTo resolves its destination on every frame and
// must not pay an interface-table walk each time. An interface that is
// deleted and recreated gets a new index, so a long-lived process doing
// that dance should re-bind rather than rely on the cache.
func interfaceIndex(name string) (int, error) {
	if index, ok := ifaceCache.Get(name); ok {
		return index, nil
	}

	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return 0, osError("resolve interface "+name, err)
	}

	ifaceCache.Add(name, ifi.Index)
	return ifi.Index, nil
}
