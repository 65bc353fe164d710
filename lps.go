// Package lps turns broadcaster schedule pages into canonical electronic
// program guides. It extracts (time, title) listings from heterogeneous
// HTML markup, normalizes them into chronologically consistent programme
// intervals in a fixed timezone, and hands the result to an XMLTV
// serializer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, sqlite/).
package lps
