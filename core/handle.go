package core

// Handle is an opaque identifier for a body in the physics world
// The same value identifies the Piece owning that body
type Handle uint64

// NoHandle is never issued by a world
const NoHandle Handle = 0
