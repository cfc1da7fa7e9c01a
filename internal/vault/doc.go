// Package vault implements the two encrypted container formats keycase uses
// to move private-key material offline.
//
// # Modern format
//
// A byte-exact binary container (little-endian multi-byte fields):
//
//	[8B noise?][version=1][kdf_id=1][u32 t_cost][u32 m_cost_kib][u8 p_cost]
//	[u8 salt_len][salt][u8 nonce_len][nonce][ciphertext || 16B tag]
//
// The key is derived from the password with Argon2id using the parameters
// embedded in the header; encryption is XChaCha20-Poly1305 with the entire
// header byte range, optional noise prefix included, as associated data.
// Tampering with any header or ciphertext bit fails authentication, and a
// wrong password is deliberately indistinguishable from tampering.
//
// # PGP format
//
// A standard RFC 4880 symmetrically-encrypted message carrying one
// literal-data packet with the same JSON payload. The OpenPGP mechanics
// (S2K, packet framing) are delegated wholesale to gopenpgp; this package
// only owns the two-call boundary.
//
// # Detection
//
// Import classifies input bytes once (armored PGP marker, binary PGP packet
// tag, Modern at offset 0, Modern at offset 8) and all downstream logic
// switches on that single tag.
//
// Operations are synchronous and blocking; Argon2id dominates the cost by
// design. Password and derived-key buffers are zeroized on every exit path.
package vault
