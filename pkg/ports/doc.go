/*
Package ports defines the interfaces that decouple zconv components from their surroundings.

# Key Interfaces

  - ConversionAPI: The remote conversion service (convert and history routes).
  - Document: The host page; hands out regions, the input field and controls by ID.
  - Region: A display area whose content is replaced as a whole.
  - Input: The text field read by the Conversion Invoker.
  - HistoryStore: Persistence used by the development conversion API.
  - Observer: Receives request outcomes for metrics.
  - DistributedLocker: Cross-process locks guarding web sessions.
*/
package ports
