// Package collection keeps a local view of the remote book collection in step
// with the store and derives what is shown to the user.
//
// A [View] never patches its snapshot. Every create or delete that succeeds is
// followed by a full list of the collection which replaces the snapshot as a
// whole. Refreshes are stamped with a [Ticket] when issued; a result is only
// applied if nothing issued later has been applied already, so two racing
// refreshes can not roll the view back to an older read.
//
// The rows on display come from [Project], a pure function of the snapshot,
// the search text and the sort column and direction.
package collection
