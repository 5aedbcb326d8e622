package paychan

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const (
	pathCreateChannelMsg       = "paychan/create"
	pathFundChannelMsg         = "paychan/fund"
	pathCloseChannelMsg        = "paychan/close"
	pathInitiateCloseMsg       = "paychan/initiate_close"
	pathResolveCloseMsg        = "paychan/resolve_close"
	pathEmergencyWithdrawMsg   = "paychan/emergency_withdraw"
	pathUpdateConfigurationMsg = "paychan/update_configuration"
)

var _ settle.Msg = (*CreateChannelMsg)(nil)

func (CreateChannelMsg) Path() string {
	return pathCreateChannelMsg
}

func (m *CreateChannelMsg) Validate() error {
	errs := validateCall(m.Caller, m.ChannelID, m.ParticipantB)
	if m.Deposit == 0 {
		errs = errors.AppendField(errs, "Deposit", errors.ErrEmpty)
	}
	return errs
}

var _ settle.Msg = (*FundChannelMsg)(nil)

func (FundChannelMsg) Path() string {
	return pathFundChannelMsg
}

func (m *FundChannelMsg) Validate() error {
	errs := validateCall(m.Caller, m.ChannelID, m.ParticipantB)
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

var _ settle.Msg = (*CloseChannelMsg)(nil)

func (CloseChannelMsg) Path() string {
	return pathCloseChannelMsg
}

func (m *CloseChannelMsg) Validate() error {
	errs := validateCall(m.Caller, m.ChannelID, m.ParticipantB)
	errs = errors.AppendField(errs, "SignatureA", ValidSignatureShape(m.SignatureA))
	errs = errors.AppendField(errs, "SignatureB", ValidSignatureShape(m.SignatureB))
	return errs
}

var _ settle.Msg = (*InitiateCloseMsg)(nil)

func (InitiateCloseMsg) Path() string {
	return pathInitiateCloseMsg
}

func (m *InitiateCloseMsg) Validate() error {
	errs := validateCall(m.Caller, m.ChannelID, m.ParticipantB)
	errs = errors.AppendField(errs, "Signature", ValidSignatureShape(m.Signature))
	return errs
}

var _ settle.Msg = (*ResolveCloseMsg)(nil)

func (ResolveCloseMsg) Path() string {
	return pathResolveCloseMsg
}

func (m *ResolveCloseMsg) Validate() error {
	return validateCall(m.Caller, m.ChannelID, m.ParticipantB)
}

var _ settle.Msg = (*EmergencyWithdrawMsg)(nil)

func (EmergencyWithdrawMsg) Path() string {
	return pathEmergencyWithdrawMsg
}

func (m *EmergencyWithdrawMsg) Validate() error {
	return errors.AppendField(nil, "Caller", m.Caller.Validate())
}

var _ settle.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate requires a patch that changes only the minimum deposit. The
// owner, balance ceiling and dispute windows are fixed at genesis. A patch
// is partial so it is validated after being merged with the stored
// configuration.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "patch required")
	}
	var errs error
	errs = errors.AppendField(errs, "Patch.Owner", immutable(len(m.Patch.Owner) != 0))
	errs = errors.AppendField(errs, "Patch.MaxBalance", immutable(m.Patch.MaxBalance != 0))
	errs = errors.AppendField(errs, "Patch.DisputeWindow", immutable(m.Patch.DisputeWindow != 0))
	errs = errors.AppendField(errs, "Patch.MaxDisputeWindow", immutable(m.Patch.MaxDisputeWindow != 0))
	return errs
}

func immutable(changed bool) error {
	if !changed {
		return nil
	}
	return errors.Wrap(ErrInvalidInput, "cannot be changed after genesis")
}

func validateCall(caller settle.Address, channelID []byte, participantB settle.Address) error {
	var errs error
	errs = errors.AppendField(errs, "Caller", ValidParticipant(caller, nil, false))
	errs = errors.AppendField(errs, "ChannelID", ValidChannelID(channelID))
	errs = errors.AppendField(errs, "ParticipantB", ValidParticipant(participantB, caller, true))
	return errs
}
