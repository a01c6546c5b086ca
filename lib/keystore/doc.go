// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

// Package keystore supplies the HMAC keys behind every Helix
// envelope's signature.
//
// A [Store] holds two keys:
//
//   - MachineKey: 32 random bytes generated on first use and
//     persisted under the store's directory. Binds a snapshot to the
//     host that created it -- copying the file to another machine
//     without also copying the key produces a snapshot that fails
//     verification there.
//   - GlobalKey: assembled at runtime from constants compiled into the
//     binary, identical on every installation of a given Helix
//     version. Used for snapshots saved with Save's portable option,
//     which must remain loadable after being moved to a different
//     machine.
//
// [Store.Select] picks between them based on the caller's portable
// flag. Both keys are cached in a [secret.Buffer] for the process's
// lifetime, never written to a Go string, and wiped on [Store.Close].
//
// # Anti-debug tripwire
//
// On Linux, GlobalKey checks /proc/self/status for an attached
// tracer before assembling the key, and corrupts the result if one is
// found. This raises the cost of extracting the compiled-in key with
// a debugger attached at the moment of assembly; it does not, and
// cannot, prevent extraction by a sufficiently motivated attacker with
// access to the binary and unlimited time -- a compiled-in constant is
// never a secret in the cryptographic sense. The portable mode this
// key backs exists for casual tamper detection during ordinary file
// handling, not for defense against an adversary who controls the
// machine running Helix.
package keystore
