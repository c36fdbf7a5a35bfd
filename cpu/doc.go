// Package cpu implements the processor, program loader, and assembler for the
// LS-8 system.
//
// The CPU consists of a program counter (PC), 256 bytes of memory shared by
// program text and the call stack, eight 8-bit general-purpose registers
// (r0-r7, with r7 serving as the stack pointer), an ALU, and an LGE flags
// register set by comparisons.
//
// The loader reads programs written as one 8-bit binary word per line. The
// assembler provides a mnemonic language for the same instruction set,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
