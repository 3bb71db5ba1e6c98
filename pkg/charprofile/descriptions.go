/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: descriptions.go
Description: Descriptions for control characters and non-characters that carry no
Unicode name.
*/

package charprofile

var controlDescriptions = buildControlDescriptions()

func buildControlDescriptions() map[rune]string {
	m := map[rune]string{
		0x00: "NUL - Null char",
		0x01: "SOH - Start of Heading",
		0x02: "STX - Start of Text",
		0x03: "ETX - End of Text",
		0x04: "EOT - End of Transmission",
		0x05: "ENQ - Enquiry",
		0x06: "ACK - Acknowledgment",
		0x07: "BEL - Bell",
		0x08: "BS - Back Space",
		0x09: "HT - Horizontal Tab",
		0x0A: "LF - Line Feed",
		0x0B: "VT - Vertical Tab",
		0x0C: "FF - Form Feed",
		0x0D: "CR - Carriage Return",
		0x0E: "SO - Shift Out / X-On",
		0x0F: "SI - Shift In / X-Off",
		0x10: "DLE - Data Line Escape",
		0x11: "DC1 - Device Control 1 (oft. XON)",
		0x12: "DC2 - Device Control 2",
		0x13: "DC3 - Device Control 3 (oft. XOFF)",
		0x14: "DC4 - Device Control 4",
		0x15: "NAK - Negative Acknowledgement",
		0x16: "SYN - Synchronous Idle",
		0x17: "ETB - End of Transmit Block",
		0x18: "CAN - Cancel",
		0x19: "EM - End of Medium",
		0x1A: "SUB - Substitute",
		0x1B: "ESC - Escape",
		0x1C: "FS - File Separator",
		0x1D: "GS - Group Separator",
		0x1E: "RS - Record Separator",
		0x1F: "US - Unit Separator",

		0x8A: "LINE TABULATION SET * Deprecated from Unicode 3.2, 2002",
		0x90: "ERROR - Undefined CTRL Character.",
		0x9A: "LATIN CAPITAL S WITH CARON",

		0xFFFA: "Undefined Control Character",
		0xFFFB: "Undefined Control Character",
		0xFFFC: "Undefined Control Character",
	}

	for c := rune(0xFDD0); c <= 0xFDEF; c++ {
		m[c] = "Non-character code point"
	}
	// the last two code points of planes 1 to 16
	for plane := rune(1); plane <= 0x10; plane++ {
		m[plane<<16|0xFFFE] = "Undefined Control Character"
		m[plane<<16|0xFFFF] = "Undefined Control Character"
	}
	return m
}
