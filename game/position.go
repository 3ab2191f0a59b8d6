package game

// positionKey packs the side to move and every cell at two bits per square.
// MaxSize*MaxSize cells fit in the 31 bytes after the turn byte.
type positionKey [32]byte

func (b *Board) key() positionKey {
	var k positionKey
	k[0] = byte(b.turn)
	for i, p := range b.cells {
		k[1+i/4] |= byte(p) << (2 * (i % 4))
	}
	return k
}
