package ziparchive

// crcPolynomial is the reversed ISO-3309 polynomial used by ZIP.
const crcPolynomial = 0xEDB88320

// crcTable is computed once and never written again.
var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var table [256]uint32
	for n := 0; n < 256; n++ {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = crcPolynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		table[n] = c
	}
	return table
}

// Checksum returns the CRC-32 of data as stored in ZIP headers.
// Checksum of an empty slice is 0.
func Checksum(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc ^ 0xFFFFFFFF
}
