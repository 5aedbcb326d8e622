/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a single entity stored under the
"_c:<package name>" key. Configuration is loaded from the genesis file with
InitConfig and can be later changed by its owner using the update
configuration handler.

*/
package gconf
