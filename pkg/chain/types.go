package chain

import (
	"encoding/json"
	"fmt"
)

// Message type URLs relevant to code uploads. Chains upgraded from gov
// v1beta1 wrap the historic StoreCodeProposal content in a legacy-content
// message, so both shapes occur in proposal history.
const (
	MsgStoreCodeType      = "/cosmwasm.wasm.v1.MsgStoreCode"
	LegacyContentType     = "/cosmos.gov.v1.MsgExecLegacyContent"
	StoreCodeProposalType = "/cosmwasm.wasm.v1.StoreCodeProposal"
)

// CodeInfo is one stored wasm code entry from the
// /cosmwasm/wasm/v1/code query.
type CodeInfo struct {
	CodeID   string `json:"code_id"`   // decimal string
	Creator  string `json:"creator"`   // bech32 uploader address
	DataHash string `json:"data_hash"` // hex digest of the stored bytecode
}

// ProposalStatus is the gov v1 proposal status code.
type ProposalStatus int

// Gov v1 proposal status codes.
const (
	ProposalStatusUnspecified   ProposalStatus = 0
	ProposalStatusDepositPeriod ProposalStatus = 1
	ProposalStatusVotingPeriod  ProposalStatus = 2
	ProposalStatusPassed        ProposalStatus = 3
	ProposalStatusRejected      ProposalStatus = 4
	ProposalStatusFailed        ProposalStatus = 5
)

// String returns the lowercase human name for the status code.
func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusDepositPeriod:
		return "deposit_period"
	case ProposalStatusVotingPeriod:
		return "voting_period"
	case ProposalStatusPassed:
		return "passed"
	case ProposalStatusRejected:
		return "rejected"
	case ProposalStatusFailed:
		return "failed"
	default:
		return "unspecified"
	}
}

// UnmarshalJSON accepts both the numeric status code and the
// "PROPOSAL_STATUS_*" name; LCD servers emit either depending on their
// JSON encoder.
func (s *ProposalStatus) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*s = ProposalStatus(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("proposal status: expected code or name, got %s", string(data))
	}
	switch name {
	case "PROPOSAL_STATUS_DEPOSIT_PERIOD":
		*s = ProposalStatusDepositPeriod
	case "PROPOSAL_STATUS_VOTING_PERIOD":
		*s = ProposalStatusVotingPeriod
	case "PROPOSAL_STATUS_PASSED":
		*s = ProposalStatusPassed
	case "PROPOSAL_STATUS_REJECTED":
		*s = ProposalStatusRejected
	case "PROPOSAL_STATUS_FAILED":
		*s = ProposalStatusFailed
	default:
		*s = ProposalStatusUnspecified
	}
	return nil
}

// Proposal is one governance proposal from the /cosmos/gov/v1/proposals
// query, trimmed to the fields reconciliation needs.
type Proposal struct {
	ID       string            `json:"id"` // decimal string
	Title    string            `json:"title"`
	Status   ProposalStatus    `json:"status"`
	Messages []ProposalMessage `json:"messages"`
}

// ProposalMessage is one message inside a gov v1 proposal.
type ProposalMessage struct {
	Type         string         `json:"@type"`
	WasmByteCode string         `json:"wasm_byte_code,omitempty"` // base64 payload
	Content      *LegacyContent `json:"content,omitempty"`
}

// LegacyContent is the v1beta1 proposal content embedded in a
// MsgExecLegacyContent wrapper.
type LegacyContent struct {
	Type         string `json:"@type"`
	WasmByteCode string `json:"wasm_byte_code,omitempty"`
}

// Payload returns the base64 wasm payload when this message uploads
// code, in either the direct or the legacy-content shape.
func (m ProposalMessage) Payload() (string, bool) {
	switch m.Type {
	case MsgStoreCodeType:
		return m.WasmByteCode, true
	case LegacyContentType:
		if m.Content != nil && m.Content.Type == StoreCodeProposalType {
			return m.Content.WasmByteCode, true
		}
	}
	return "", false
}

// StoreCodeMessages returns the proposal's code-upload messages in
// message order.
func (p Proposal) StoreCodeMessages() []ProposalMessage {
	var msgs []ProposalMessage
	for _, m := range p.Messages {
		if _, ok := m.Payload(); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// codePage is one response page from the code query.
type codePage struct {
	CodeInfos  []CodeInfo `json:"code_infos"`
	Pagination pageInfo   `json:"pagination"`
}

// proposalPage is one response page from the proposals query.
type proposalPage struct {
	Proposals  []Proposal `json:"proposals"`
	Pagination pageInfo   `json:"pagination"`
}

// pageInfo carries the opaque continuation token; empty means the
// final page.
type pageInfo struct {
	NextKey string `json:"next_key"`
}
