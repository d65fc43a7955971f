/*
Package nbt implements Named Binary Tag trees and their binary encoding.

A tree consists of named typed tags: numbers (Byte, Short, Int, Long, Float,
Double), String, byte and int arrays, homogeneous Lists of unnamed tags and
Compounds mapping names to tags. All tags are immutable, "modifying" methods
return new values, so a tree can be shared between goroutines without any
locking.

# Accessors

List and Compound getters never fail. A missing index or name, as well as a
tag of some other type, gives the zero value of the requested type (0, "",
a new empty slice, an empty List or Compound). AsInt, AsLong and AsDouble
additionally convert between all numeric types.

# Binary format

Everything is big-endian. A named tag is a 1-byte type id, a 2-byte name
length, the name (UTF-8) and the payload. End (id 0) has neither name nor
payload. Payloads are:

	Byte, Short, Int, Long      1, 2, 4, 8 bytes
	Float, Double               IEEE-754, 4 and 8 bytes
	String                      2-byte length + UTF-8 bytes
	ByteArray, IntArray         4-byte signed length + elements (1 or 4 bytes)
	List                        element type id + 4-byte signed length + unnamed payloads
	Compound                    named tags terminated by End

Malformed data always fails decoding with a *FormatError, nesting is limited
by Limits.MaxDepth (DefaultMaxDepth by default). Compression is not a part of
the format, see the compress package for stream wrappers.
*/
package nbt
