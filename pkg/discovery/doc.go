// Package discovery announces multiwatch web front ends on the local network.
//
// A running multiwatch-web registers a DNS-SD service of type
// "_multiwatch._tcp" in the "local." domain so phones and other machines on
// the LAN can find the page without typing an address. The TXT record
// carries the version, the URL path of the page and the number of
// stopwatches at startup.
//
// Browse lists announced instances; `multiwatch-web -discover` prints them.
package discovery
