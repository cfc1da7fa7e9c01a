package vault

import "runtime"

// Zero overwrites b with zeros. The KeepAlive keeps the compiler from
// eliminating the store as dead. Defense-in-depth: Go gives no hard
// guarantee about copies the runtime may have made.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroAll zeros every given buffer.
func ZeroAll(bufs ...[]byte) {
	for _, b := range bufs {
		Zero(b)
	}
}
