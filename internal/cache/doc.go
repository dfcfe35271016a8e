// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package cache provides a bounded, thread-safe in-memory cache with TTL
expiration and least-recently-used eviction.

It backs the course-info client so repeated lookups for the same course ID
do not hit the upstream service while an entry is fresh.

# Behavior

  - Get and Set are O(1) (map plus doubly-linked list)
  - Expired entries are removed lazily on Get and in bulk by Cleanup
  - When capacity is reached the least recently used entry is evicted
  - Serve runs Cleanup on an interval until its context is cancelled,
    which lets the cache be added to a suture supervisor

# Example

	c := cache.New[Info](1000, 10*time.Minute)
	c.Set("c1", info)
	if v, ok := c.Get("c1"); ok {
	    use(v)
	}
*/
package cache
