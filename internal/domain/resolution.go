package domain

// FailedMarker stands in for the identifier of a code that could not be resolved.
const FailedMarker = "Failed to retrieve"

// Resolution pairs a PDB code with the UniProt identifier chosen for it.
// Order is the 1-based position in resolution order.
type Resolution struct {
	Order      int      `json:"order"`
	Code       Code     `json:"code"`
	UniProtID  string   `json:"uniprot_id"`
	Candidates []string `json:"candidates,omitempty"`
}

// ResolveFailure records a code for which no identifier could be obtained.
type ResolveFailure struct {
	Code       Code   `json:"code"`
	Reason     string `json:"reason"`
	StatusCode int    `json:"status_code,omitempty"`
}

// ResolutionResult partitions the unique code set into resolved and failed codes.
type ResolutionResult struct {
	Resolved []Resolution     `json:"resolved"`
	Failed   []ResolveFailure `json:"failed"`
}

// Add appends a resolution, assigning the next order index.
func (r *ResolutionResult) Add(code Code, id string, candidates []string) Resolution {
	res := Resolution{
		Order:      len(r.Resolved) + 1,
		Code:       code,
		UniProtID:  id,
		Candidates: candidates,
	}
	r.Resolved = append(r.Resolved, res)
	return res
}

// Fail appends a failure for code.
func (r *ResolutionResult) Fail(code Code, reason string, status int) {
	r.Failed = append(r.Failed, ResolveFailure{Code: code, Reason: reason, StatusCode: status})
}

// IDs returns one identifier per resolved code, in resolution order.
// Identifiers shared by several codes appear once per code.
func (r ResolutionResult) IDs() []string {
	out := make([]string, 0, len(r.Resolved))
	for _, res := range r.Resolved {
		out = append(out, res.UniProtID)
	}
	return out
}

// UniqueIDs returns the distinct identifiers in first-resolution order,
// each with the codes that mapped to it.
func (r ResolutionResult) UniqueIDs() ([]string, map[string][]Code) {
	ids := make([]string, 0, len(r.Resolved))
	codes := make(map[string][]Code, len(r.Resolved))
	for _, res := range r.Resolved {
		if _, seen := codes[res.UniProtID]; !seen {
			ids = append(ids, res.UniProtID)
		}
		codes[res.UniProtID] = append(codes[res.UniProtID], res.Code)
	}
	return ids, codes
}

// FailedCodes returns the failed codes in the order they were recorded.
func (r ResolutionResult) FailedCodes() []Code {
	out := make([]Code, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Code)
	}
	return out
}
