// Package patch is the apply/rollback engine.
//
// Applying a patch walks a fixed state machine:
//
//	validate patch dir -> restrictions -> already-patched guard ->
//	validate target -> backup -> (apply entry, verify entry)* ->
//	success, or rollback of the applied prefix on the first failure
//
// Entries are processed strictly in manifest order with no
// interleaving; verification of an entry happens immediately after
// its apply and before the next entry starts, so the first corrupted
// entry stops the run while the blast radius is still one file deep.
//
// The backup directory is retained after success so a later Rollback
// call can uninstall the patch. Its presence at the start of a new
// apply run means the target is already patched (or a previous run
// aborted) and the run is refused.
package patch
