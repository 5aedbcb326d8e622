/*
Package settletest provides mocks and helpers that are useful when testing
handlers, decorators and extensions.

settletest/assert provides assertion helpers that understand registered
errors.
*/
package settletest
