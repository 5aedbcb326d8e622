/*
Package cash implements the asset ledger: a wallet with a single balance per
address and a controller that moves funds between wallets atomically.

Other extensions use the Controller to escrow funds, the SendMsg allows
accounts to transfer funds between each other.
*/
package cash
