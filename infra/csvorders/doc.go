// Package csvorders persists bookings and workorders to flat CSV files so a
// scheduling engine and an ERP can exchange orders without sharing a
// database.
//
// The unscheduled ledger (bookings.csv) and the unfilled ledger
// (workorders.csv) are append-oriented: rows are immutable once written. A
// booking or workorder is consumed by writing a per-id sentinel file whose
// existence alone marks it scheduled or filled. The scheduled-parts file is
// replaced wholesale on every schedule commit through a temp-then-rename
// protocol; Load finishes the rename if a previous commit crashed in
// between.
package csvorders
