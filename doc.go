/*
Package settle defines all common interfaces to tie together the
settlement application, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

A transaction travels from the app, through a chain of Decorators, to the
Handler registered for its message path. Every layer receives a Context, the
KVStore to operate on and the Tx itself.

We pass context through context.Context between app, middleware, and
handlers. To do so, settle defines some common keys to store info, such as
block height and chain id. Each extension, such as sigs, may add its own keys
to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, header)
*/
package settle
