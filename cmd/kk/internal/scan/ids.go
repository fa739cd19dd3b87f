package scan

import (
	"os/user"
	"strconv"
	"sync"
)

// idCache memoizes uid/gid to name lookups for the duration of one scan.
// Unknown ids fall back to their decimal form.
type idCache struct {
	mu     sync.Mutex
	users  map[uint32]string
	groups map[uint32]string
}

func newIDCache() *idCache {
	return &idCache{
		users:  make(map[uint32]string),
		groups: make(map[uint32]string),
	}
}

func (c *idCache) user(uid uint32) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name, ok := c.users[uid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(uid), 10)
	name := id
	if u, err := user.LookupId(id); err == nil && u.Username != "" {
		name = u.Username
	}
	c.users[uid] = name
	return name
}

func (c *idCache) group(gid uint32) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name, ok := c.groups[gid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(gid), 10)
	name := id
	if g, err := user.LookupGroupId(id); err == nil && g.Name != "" {
		name = g.Name
	}
	c.groups[gid] = name
	return name
}
