package settled

import (
	"bytes"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/commands"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/paychan"
	"github.com/iov-one/settle/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	key := ed25519.NewKeyFromSeed(seed)
	alice := sigs.PubkeyCondition(key.Public().(ed25519.PublicKey)).Address()
	bob := settle.NewCondition("sigs", "ed25519", bytes.Repeat([]byte{0x07}, ed25519.PublicKeySize)).Address()
	channelID := bytes.Repeat([]byte{0x01}, paychan.ChannelIDLength)
	signature := bytes.Repeat([]byte{0x0A}, paychan.SignatureLength)

	wallet := &cash.Wallet{Balance: 123456789}
	channel := &paychan.Channel{
		ChannelID:      channelID,
		ParticipantA:   alice,
		ParticipantB:   bob,
		TotalDeposited: 15000,
		BalanceA:       6000,
		BalanceB:       9000,
		IsOpen:         true,
	}
	conf := paychan.DefaultConfiguration(alice)

	create := &paychan.CreateChannelMsg{
		Caller:       alice,
		ChannelID:    channelID,
		ParticipantB: bob,
		Deposit:      15000,
	}
	closing := &paychan.CloseChannelMsg{
		Caller:       alice,
		ChannelID:    channelID,
		ParticipantB: bob,
		BalanceA:     6000,
		BalanceB:     9000,
		SignatureA:   signature,
		SignatureB:   signature,
	}

	tx := &Tx{CreateChannelMsg: create}
	sig, err := sigs.SignTx(key, tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "channel", Obj: channel},
		{Filename: "paychan_configuration", Obj: &conf},
		{Filename: "create_channel_msg", Obj: create},
		{Filename: "close_channel_msg", Obj: closing},
		{Filename: "signed_tx", Obj: tx},
	}
}
