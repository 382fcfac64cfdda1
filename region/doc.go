// Package region implements the Anvil region (.mca) container format.
//
// A region file stores up to 1024 independently compressed NBT documents
// ("chunks") addressed by a 32×32 coordinate grid. The file is divided into
// fixed 4096-byte sectors: sector 0 holds 1024 chunk locations, sector 1
// holds 1024 modification timestamps, and data sectors begin at index 2.
// Each chunk record is a 4-byte big-endian length, a 1-byte compression
// type, the compressed payload, and zero padding to the sector boundary.
//
// Region opens a file read-only via a memory mapping and serves chunk
// lookups without parsing any payload up front. Writer lays out a complete
// file in one pass: data sectors first, header tables back-patched last.
//
// Chunk absence is a distinct success value: lookups on a never-written
// coordinate return nil with no error, while corrupt records fail with
// *FormatError or *InvalidCompressionError.
package region
