// Package dedupe provides the shared singleflight group used to
// deduplicate concurrent profile loads. When several handlers ask for
// the same user at once (both battle participants polling, plus the
// leaderboard), only one database read runs while the others wait for
// its result.
package dedupe

import "golang.org/x/sync/singleflight"

// ProfileGroup deduplicates profile fetches keyed by user id.
var ProfileGroup singleflight.Group
