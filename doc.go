// Package tallybot provides the building blocks of a webhook-driven slack bot
// that turns emoji-tagged messages and reactions into per-user reward tallies.
// It bundles the signed-request verification, the event registry/dispatch, the
// content parsing and the scoring engine that mutates per-team counters kept
// in a store.GlobalSiloStringStorer backend.
package tallybot
