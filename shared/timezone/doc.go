// Package timezone pins every wall-clock decision of the service to one location.
//
// Booking dates, daily stats keys and the "today" used for current crowd all come from
// here, so a server running in UTC still rolls the day over at midnight of APP_TIMEZONE.
// The location is resolved from config on first use; an unknown IANA name falls back to UTC.
package timezone
