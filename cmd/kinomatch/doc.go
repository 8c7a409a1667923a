// Package main hosts the kinomatch CLI entrypoint and command graph.
//
// Commands fetch theatre schedules, normalize them into showtimes, link each
// showtime to a catalog entry through a match session, and summarize group
// scheduling exports. Configuration resolution, logger construction, and
// outbound HTTP wiring live in the command context so subcommands only deal
// with flags and rendering.
package main
