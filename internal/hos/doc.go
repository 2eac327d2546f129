// Package hos derives daily Hours-of-Service logs for a planned trip.
//
// The engine is a pure computation: it takes the prior cycle usage, the
// trip's estimated duration and the calendar date of the first day, and
// returns one DailyLog per day. It performs no I/O and reads no clock.
// Days are processed in order because each day's cycle usage seeds the next.
package hos
