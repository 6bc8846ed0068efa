// Package orders defines the domain model for the order interchange store:
// bookings (demand waiting to be scheduled), workorders (demand waiting to be
// produced), schedules, backouts, and the store interfaces implemented by the
// CSV and sqlite backends.
package orders
