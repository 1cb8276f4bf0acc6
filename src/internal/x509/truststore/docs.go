// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package truststore holds the set of trusted root certificates the chain
// builder may terminate at. Stores are immutable values: adding an anchor
// yields a new Store, so snapshots can be shared across concurrent
// verification calls without synchronization.
package truststore
