package protocol

// Seeds travel as decimal strings; a JSON number cannot carry 64 bits.
// Both the signed and the unsigned spelling are accepted.

// CREATE (client -> server)
type CreateMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Seed            string `json:"seed"`
}

// DESTROY (client -> server)
type DestroyMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
}

// QUERY (client -> server)
type QueryMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
	X               int32  `json:"x"`
	Y               int32  `json:"y"`
	Z               int32  `json:"z"`
}

// QUERY_2D (client -> server)
type Query2DMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
	X               int32  `json:"x"`
	Z               int32  `json:"z"`
}

// RESEED (client -> server)
type ReseedMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
	Seed            string `json:"seed"`
}

// CREATED (server -> client)
type CreatedMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
	Seed            string `json:"seed"`
}

// DESTROYED (server -> client)
type DestroyedMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
}

// BIOME (server -> client). Y is omitted for QUERY_2D answers.
type BiomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
	X               int32  `json:"x"`
	Y               *int32 `json:"y,omitempty"`
	Z               int32  `json:"z"`
	Code            uint32 `json:"code"`
	Name            string `json:"name"`
}

// RESEEDED (server -> client)
type ReseededMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Handle          uint64 `json:"handle"`
	Seed            string `json:"seed"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}

func NewError(reqID, code, message string) ErrorMsg {
	return ErrorMsg{
		Type:            TypeError,
		ProtocolVersion: Version,
		ReqID:           reqID,
		Code:            code,
		Message:         message,
	}
}
