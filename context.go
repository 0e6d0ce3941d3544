package sigcodec

import "github.com/palisade-labs/sigcodec/internal/signhash"

// Context is the immutable per-session state both Encoder and Decoder
// derive their keystream seeds from.
type Context struct {
	hash          string
	cid           string
	salt          int32
	challengeType ChallengeType

	mainSeed int32
	cidSeed  int32
}

// newContext builds a Context and derives its seeds, per spec §2:
// mainSeed = MAIN_CONST ^ SignHash(hash) ^ HASH_XOR_CONST[type]
// cidSeed  = CID_CONST  ^ SignHash(cid)
func newContext(hash, cid string, salt int32, t ChallengeType) *Context {
	c := &Context{hash: hash, cid: cid, salt: salt, challengeType: t}
	c.deriveSeeds()
	return c
}

func (c *Context) deriveSeeds() {
	c.mainSeed = mainConst32 ^ signhash.Hash(c.hash) ^ hashXorConst(c.challengeType)
	c.cidSeed = cidConst32 ^ signhash.Hash(c.cid)
}

// Salt returns the effective salt, whether it was supplied explicitly or
// derived from the clock collaborator.
func (c *Context) Salt() int32 { return c.salt }

// ChallengeType returns the context's active challenge type.
func (c *Context) ChallengeType() ChallengeType { return c.challengeType }
