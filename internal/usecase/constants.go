package usecase

import "time"

// IdempotencyKeyTTL is how long a cached mutation response can be
// replayed before the key expires.
const IdempotencyKeyTTL = 24 * time.Hour
