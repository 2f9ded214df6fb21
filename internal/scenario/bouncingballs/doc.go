// Package bouncingballs is a demo scenario: balls fall under gravity and
// bounce off the walls of a resizable area.
//
// The presentation publishes the area as Config; the simulation
// publishes ball positions as Snapshot. Pause, resume, shake and ball
// count changes travel as Commands; bounce counts and acknowledgements
// come back as Events.
package bouncingballs
