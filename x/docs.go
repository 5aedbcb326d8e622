/*
Package x contains the extensions of the settlement application.

Extensions implement common functionality (Handler, Decorator,
Initializer and query handlers) and are combined together in
cmd/settled to construct the application. This package holds the
authentication helpers shared by all of them.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `paychan.CreateChannelMsg` in place of
`paychan.PaychanCreateChannelMsg`.
*/
package x
