package ndn

// SigType identifies the signature algorithm carried in SignedInfo.
type SigType int

const (
	SignatureNone            SigType = -1
	SignatureDigestSha256    SigType = 0
	SignatureSha256WithRsa   SigType = 1
	SignatureSha256WithEcdsa SigType = 3
	SignatureHmacWithSha256  SigType = 4
	SignatureEd25519         SigType = 5
	SignatureEmptyTest       SigType = 200
)

// InterestResult classifies the outcome delivered to an expressInterest sink.
type InterestResult int

const (
	// InterestResultNone is the zero value; never delivered to a sink.
	InterestResultNone InterestResult = iota
	// InterestResultData is delivered when verification succeeded. With
	// verification disabled the sink gets InterestResultUnverified instead.
	InterestResultData
	// InterestResultUnverified is delivered when verify_enabled is false.
	InterestResultUnverified
	// InterestResultBad is delivered when signature verification failed, a
	// witness was present, or the cert locator path is unsupported.
	InterestResultBad
	// InterestResultTimeout is delivered when no matching Data arrived
	// within the Interest's lifetime.
	InterestResultTimeout
	// InterestResultNack is delivered on a forwarder Nack, reserved for
	// transports that surface one; unused by the stream/websocket transports
	// in this repo.
	InterestResultNack
	// InterestResultError is delivered on a local error (encode failure,
	// face down) before the Interest was ever sent.
	InterestResultError
)

func (r InterestResult) String() string {
	switch r {
	case InterestResultData:
		return "Content"
	case InterestResultUnverified:
		return "ContentUnverified"
	case InterestResultBad:
		return "ContentBad"
	case InterestResultTimeout:
		return "InterestTimedOut"
	case InterestResultNack:
		return "Nack"
	case InterestResultError:
		return "Error"
	default:
		return "None"
	}
}

// SinkAction is returned by an expressInterest sink on timeout to request
// re-expression.
type SinkAction int

const (
	SinkActionNone SinkAction = iota
	SinkActionReexpress
)

// InterestAction is returned by a registered-prefix sink after handling an
// inbound Interest.
type InterestAction int

const (
	InterestActionNone InterestAction = iota
	InterestActionConsumed
)
