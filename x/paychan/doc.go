/*
Package paychan implements bilateral payment channels settled on chain.

Two participants lock funds in a shared custody account, exchange balance
updates off chain and settle on chain either cooperatively, with signatures
of both parties, or unilaterally, by publishing the latest state and waiting
for the dispute window to pass.

A channel is stored under the positional key

	channel_id | participant_a | participant_b

where participant_a is the account that created (escrowed) the channel.
Every lifecycle message builds the key from the message caller, so only
participant_a can address an existing channel record.
*/
package paychan
