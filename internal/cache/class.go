package cache

import (
	"strings"
	"time"
)

// Class identifies a category of cached payload. TTL and durability policy
// are a pure function of the class, never of the request that produced it.
type Class string

const (
	ClassSearch  Class = "search"
	ClassVideo   Class = "video-metadata"
	ClassChannel Class = "channel-metadata"
	ClassLyrics  Class = "lyrics"
)

// DefaultClass is used when a key's namespace prefix matches no known class.
const DefaultClass = ClassSearch

// Permanent marks an entry that never expires.
const Permanent time.Duration = 0

// Policy describes how entries of a class are stored.
type Policy struct {
	TTL     time.Duration // Permanent means no expiry
	Durable bool          // whether the disk tier is used
}

var policies = map[Class]Policy{
	ClassSearch:  {TTL: 5 * time.Minute, Durable: false},
	ClassVideo:   {TTL: 60 * time.Minute, Durable: true},
	ClassChannel: {TTL: 24 * time.Hour, Durable: true},
	ClassLyrics:  {TTL: Permanent, Durable: true},
}

// Policy returns the storage policy for the class. Unknown classes resolve
// to the DefaultClass policy.
func (c Class) Policy() Policy {
	if p, ok := policies[c]; ok {
		return p
	}
	return policies[DefaultClass]
}

// Known reports whether c is one of the closed set of content classes.
func (c Class) Known() bool {
	_, ok := policies[c]
	return ok
}

// Key builds a namespaced cache key for an id within the class.
func (c Class) Key(id string) string {
	return string(c) + ":" + id
}

// ClassOf derives the content class from a key's namespace prefix (the
// substring before the first colon), falling back to DefaultClass.
func ClassOf(key string) Class {
	if i := strings.IndexByte(key, ':'); i > 0 {
		if c := Class(key[:i]); c.Known() {
			return c
		}
	}
	return DefaultClass
}
