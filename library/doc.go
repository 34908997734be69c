/*
Package library implements a fair readers/writers guard on top of a single
weighted semaphore.

A Library admits up to Capacity concurrent readers or exactly one writer. Readers
take one unit of the admission semaphore, writers take all of them in one
indivisible request. The semaphore grants requests strictly in arrival order and a
blocked writer holds back every later arrival, so neither readers nor writers can
starve each other.

Besides admission the Library keeps two ordered sets for observability: actors
that are waiting and actors that are inside. They can be read with Inside, Waiting
and Snapshot, and every transition is reported to the registered Observers.
*/
package library
