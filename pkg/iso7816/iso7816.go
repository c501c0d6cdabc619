/*
Package iso7816 implements data structures and logic to interact with smart cards according to the ISO/IEC 7816 standard.

This package provides the fundamental building blocks for APDU (Application Protocol Data Unit) communication, including Command and Response structures, Status Word (SW) analysis, and the chaining client used to carry a logical command/response pair across multiple physical transmissions.

# Fundamentals

The communication with a smart card is strictly synchronous:
 1. The Host sends a Command APDU (Header + Optional Body).
 2. The Card processes it and returns a Response APDU (Optional Body + Trailer SW1/SW2).

# Status Words

Every response ends with a 2-byte Status Word (SW).
  - 0x9000: Success (OK).
  - 0x61XX: Success, but response data is still available (XX bytes).
  - 0x6CXX: Error, wrong length expectation (XX is the correct length).
  - Other: Various error conditions.

# File Selection

The SELECT command (0xA4) is built with NewSelectCommand/SelectByAID, which
encode the P1 selection method and P2 occurrence/response-type bits. Callers
that need the returned file-control data parse it against their own
application's tag layout rather than a generic one, since that layout is
application-specific (see pkg/piv's APT parsing for an example).

# Usage Example: Selecting and Transmitting

	client := iso7816.NewClient(transmitter)
	cla, _ := iso7816.NewClass(0x00)
	cmd := iso7816.SelectByAID(cla, aid)
	trace, err := client.Send(cmd)
	if err != nil {
	    log.Fatal(err)
	}
	resp := trace.Last().Response
	if resp.Status != iso7816.SW_NO_ERROR {
	    log.Printf("select failed: %04X", uint16(resp.Status))
	}
*/
package iso7816
