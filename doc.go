// Package main provides the entry point of nsupdate-interactive.
// It transfers a DNS zone with dig (or reads it from the PowerDNS API),
// renders it as an aligned zone file, opens it in the user's editor and
// sends the differences back as a minimal nsupdate batch. Applied batches
// can be recorded in a journal database backed by gorm.
package main
