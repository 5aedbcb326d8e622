/*
Package errors implements custom error interfaces for the settlement
application.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. x/cash, x/sigs and
x/paychan register their own root errors.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf.
Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

There is also support for stacktraces. Please ensure you create the custom error using
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to ensure we attach
a stacktrace. If you wrap multiple times, we only record the first wrap with the stacktrace.
(And don't do this as a global `var ErrFoo = errors.ErrHuman.New("foo")` or you will get a
useless stacktrace).

Once you have an error, ABCIInfo converts it into the code and log returned
to the client. Outside of debug mode the log of errors that were not
registered is replaced with a generic message.
*/
package errors
