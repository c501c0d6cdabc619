package iso7816

import "fmt"

// COMMAND/RESPONSE CHAINING:
//
// PIV commands such as GENERAL AUTHENTICATE or PUT DATA can carry bodies
// well past the 255-byte short-APDU limit. ISO/IEC 7816-4 handles this in
// both directions:
//
//  1. Command chaining: the CLA chaining bit (bit 5, 0x10) marks all but
//     the final 255-byte block of a long command body.
//  2. Response chaining: a 61XX status means XX more bytes are waiting;
//     the host fetches them with GET RESPONSE (INS 0xC0) until a non-61XX
//     status is returned.
//
// TransceiveChain drives both directions around a single logical command,
// returning one ResponseAPDU whose Data is the full reassembled reply.

// continuationStatus reports whether sw1 is one of the status-word high
// bytes that permit continuing a chained command
// ({0x90, 0x61, 0x62, 0x63}, i.e. no-error, bytes-remaining, or warning).
func continuationStatus(sw1 byte) bool {
	switch sw1 {
	case 0x90, 0x61, 0x62, 0x63:
		return true
	default:
		return false
	}
}

// TransceiveChain sends cls/ins/p1/p2/data to tx, splitting data into
// 255-byte command-chained blocks as needed, then follows any 61XX
// response chaining until the reply is fully reassembled.
func TransceiveChain(tx Transmitter, cls Class, ins Instruction, p1, p2 byte, data []byte) (*ResponseAPDU, Trace, error) {
	var trace Trace

	offset := 0
	var last *ResponseAPDU
	for {
		remaining := len(data) - offset
		n := remaining
		more := false
		if n > MaxShortLc {
			n = MaxShortLc
			more = true
		}
		chunk := data[offset : offset+n]
		offset += n

		blockCls := cls
		blockCls.IsChained = more

		cmd := NewCommandAPDU(blockCls, ins, p1, p2, chunk, 0)
		raw, err := cmd.Bytes()
		if err != nil {
			return nil, trace, fmt.Errorf("encoding chained block: %w", err)
		}

		rawResp, err := tx.Transmit(raw)
		if err != nil {
			return nil, trace, fmt.Errorf("transmitting chained block: %w", err)
		}

		resp, err := ParseResponseAPDU(rawResp)
		if err != nil {
			return nil, trace, err
		}
		trace = append(trace, Transaction{Command: cmd, Response: resp})

		if more {
			if !continuationStatus(resp.Status.SW1()) {
				return resp, trace, fmt.Errorf("card rejected chained block: %s", resp.Status.Verbose())
			}
			continue
		}

		last = resp
		break
	}

	full := append([]byte{}, last.Data...)
	noChainCls := cls
	noChainCls.IsChained = false

	for last.Status.SW1() == 0x61 {
		getResp, _ := NewInstruction(INS_GET_RESPONSE)
		cmd := NewCommandAPDU(noChainCls, getResp, 0x00, 0x00, nil, 0)
		raw, err := cmd.Bytes()
		if err != nil {
			return nil, trace, fmt.Errorf("encoding GET RESPONSE: %w", err)
		}

		rawResp, err := tx.Transmit(raw)
		if err != nil {
			return nil, trace, fmt.Errorf("transmitting GET RESPONSE: %w", err)
		}

		resp, err := ParseResponseAPDU(rawResp)
		if err != nil {
			return nil, trace, err
		}
		trace = append(trace, Transaction{Command: cmd, Response: resp})

		full = append(full, resp.Data...)
		last = resp
	}

	return &ResponseAPDU{Data: full, Status: last.Status}, trace, nil
}
