// Package cpu implements the LC-3 machine: register file, memory with the
// memory-mapped keyboard registers, instruction decode and execution, the
// trap services, and the fetch-decode-execute loop.
//
// The machine has eight 16-bit general purpose registers (r0-r7), a program
// counter, and a condition flag register holding exactly one of the
// POSITIVE/ZERO/NEGATIVE flags. Memory is a flat array of 65536 words;
// every read of the keyboard status register polls the attached key source.
// All arithmetic wraps modulo 2^16.
package cpu
