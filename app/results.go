package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// ResultSet contains a list of keys or values returned by a query.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetProto ResultSet

func (m *resultSetProto) Reset()         { *m = resultSetProto{} }
func (m *resultSetProto) String() string { return proto.CompactTextString(m) }
func (*resultSetProto) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetProto)(m))
}

func (m *ResultSet) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*resultSetProto)(m))
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []settle.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []settle.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]settle.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrInvalidState, "mismatched result set size")
	}
	mods := make([]settle.Model, len(kref))
	for i := range mods {
		mods[i] = settle.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o settle.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(err, "unmarshal result set")
	}
	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
