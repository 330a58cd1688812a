package accounts

import "time"

// nowFunc is a seam for deterministic timestamps.
var nowFunc = time.Now
