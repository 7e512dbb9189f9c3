/*
Package domain contains the core models of the zconv client.

It defines what travels over the conversion API and how those values are
spelled when shown to a user. This package is kept free of I/O: decoding
works on response bodies that the adapters have already read.

# Key Entities

  - Value: A single element of a converted sequence, kept as raw JSON.
  - ConversionResult: Tagged union decoded from the conversion route (Output, Detail, Unrecognized).
  - HistoryEntry: One prior input/output pair returned by the history route.
  - Record: The server-side form of a history entry, as persisted by history stores.
  - Element IDs: The identifiers a host document must expose.
*/
package domain
