package chip8

func (cpu *Cpu) unhandled(ins Instruction) error {
	return ErrUnhandledInstruction{
		OpCode: ins.Raw,
		Pc:     cpu.Pc - 2,
	}
}

func (cpu *Cpu) skipIf(cond bool) {
	if cond {
		cpu.Pc += 2
	}
}

// operands returns Vx and Vy
func (cpu *Cpu) operands(ins Instruction) (byte, byte, error) {
	vx, err := cpu.Register(ins.X)
	if err != nil {
		return 0, 0, err
	}
	vy, err := cpu.Register(ins.Y)
	if err != nil {
		return 0, 0, err
	}

	return vx, vy, nil
}

func (cpu *Cpu) execute(ins Instruction, keyboard Keyboard) error {
	switch ins.Prefix {
	case 0x0:
		switch ins.Raw {
		case 0x00E0:
			// CLS :: Clear the display.
			cpu.clearScreen()

		case 0x00EE:
			// RET :: Return from a subroutine.
			return cpu.PopStack()

		default:
			// SYS addr :: Jump to a machine code routine at nnn.
			// Only meaningful on the original computers, unhandled unless an interpreter was configured.
			if cpu.machineRoutineInterpreter != nil {
				return cpu.machineRoutineInterpreter(ins, cpu)
			}
			return cpu.unhandled(ins)
		}

	case 0x1:
		// JP addr :: Jump to location nnn.
		cpu.Pc = ins.NNN

	case 0x2:
		// CALL addr :: Call subroutine at nnn.
		return cpu.PushStack(ins.NNN)

	case 0x3, 0x4:
		// SE Vx, byte :: Skip next instruction if Vx = kk.
		// SNE Vx, byte :: Skip next instruction if Vx != kk.
		vx, err := cpu.Register(ins.X)
		if err != nil {
			return err
		}
		cpu.skipIf((vx == ins.KK) == (ins.Prefix == 0x3))

	case 0x5, 0x9:
		// SE Vx, Vy :: Skip next instruction if Vx = Vy.
		// SNE Vx, Vy :: Skip next instruction if Vx != Vy.
		if ins.N != 0 {
			return cpu.unhandled(ins)
		}
		vx, vy, err := cpu.operands(ins)
		if err != nil {
			return err
		}
		cpu.skipIf((vx == vy) == (ins.Prefix == 0x5))

	case 0x6:
		// LD Vx, byte :: Set Vx = kk.
		return cpu.SetRegister(ins.X, ins.KK)

	case 0x7:
		// ADD Vx, byte :: Set Vx = Vx + kk. VF is untouched.
		vx, err := cpu.Register(ins.X)
		if err != nil {
			return err
		}
		return cpu.SetRegister(ins.X, vx+ins.KK)

	case 0x8:
		return cpu.executeAlu(ins)

	case 0xA:
		// LD I, addr :: Set I = nnn.
		cpu.I = ins.NNN

	case 0xB:
		// JP V0, addr :: Jump to location nnn + V0 (or xnn + Vx).
		idx := byte(0)
		if cpu.quirks.Has(QuirkJumpUsesVx) {
			idx = ins.X
		}
		v, err := cpu.Register(idx)
		if err != nil {
			return err
		}
		cpu.Pc = ins.NNN + uint16(v)

	case 0xC:
		// RND Vx, byte :: Set Vx = random byte AND kk.
		return cpu.SetRegister(ins.X, byte(cpu.rng.Uint32())&ins.KK)

	case 0xD:
		// DRW Vx, Vy, nibble :: Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.
		return cpu.draw(ins)

	case 0xE:
		return cpu.executeKeySkip(ins, keyboard)

	case 0xF:
		return cpu.executeMisc(ins)
	}

	return nil
}

// executeAlu runs the inter-register operations (8xyN).
// Flags are computed from the operands before the write and stored last.
func (cpu *Cpu) executeAlu(ins Instruction) error {
	vx, vy, err := cpu.operands(ins)
	if err != nil {
		return err
	}

	switch ins.Suffix4() {
	case 0x0:
		// LD Vx, Vy :: Set Vx = Vy.
		return cpu.SetRegister(ins.X, vy)

	case 0x1, 0x2, 0x3:
		// OR Vx, Vy :: Set Vx = Vx OR Vy.
		// AND Vx, Vy :: Set Vx = Vx AND Vy.
		// XOR Vx, Vy :: Set Vx = Vx XOR Vy.
		var r byte
		switch ins.Suffix4() {
		case 0x1:
			r = vx | vy
		case 0x2:
			r = vx & vy
		case 0x3:
			r = vx ^ vy
		}
		if err := cpu.SetRegister(ins.X, r); err != nil {
			return err
		}
		if cpu.quirks.Has(QuirkVfReset) {
			cpu.SetFlag(0)
		}

	case 0x4:
		// ADD Vx, Vy :: Set Vx = Vx + Vy, set VF = carry.
		r := uint16(vx) + uint16(vy)
		if err := cpu.SetRegister(ins.X, byte(r)); err != nil {
			return err
		}
		cpu.SetFlag(byte(r >> 8))

	case 0x5:
		// SUB Vx, Vy :: Set Vx = Vx - Vy, set VF = NOT borrow.
		if err := cpu.SetRegister(ins.X, vx-vy); err != nil {
			return err
		}
		cpu.SetFlag(bool2byte(vx > vy))

	case 0x6:
		// SHR Vx {, Vy} :: Set Vx = Vx SHR 1.
		if cpu.quirks.Has(QuirkShiftWithVy) {
			vx = vy
		}
		if err := cpu.SetRegister(ins.X, vx>>1); err != nil {
			return err
		}
		cpu.SetFlag(vx & 0b00000001)

	case 0x7:
		// SUBN Vx, Vy :: Set Vx = Vy - Vx, set VF = NOT borrow.
		if err := cpu.SetRegister(ins.X, vy-vx); err != nil {
			return err
		}
		cpu.SetFlag(bool2byte(vx < vy))

	case 0xE:
		// SHL Vx {, Vy} :: Set Vx = Vx SHL 1.
		if cpu.quirks.Has(QuirkShiftWithVy) {
			vx = vy
		}
		if err := cpu.SetRegister(ins.X, vx<<1); err != nil {
			return err
		}
		cpu.SetFlag((vx & 0b10000000) >> 7)

	default:
		return cpu.unhandled(ins)
	}

	return nil
}

func (cpu *Cpu) executeKeySkip(ins Instruction, keyboard Keyboard) error {
	if ins.Suffix8() != 0x9E && ins.Suffix8() != 0xA1 {
		return cpu.unhandled(ins)
	}

	vx, err := cpu.Register(ins.X)
	if err != nil {
		return err
	}
	if vx >= KeyCount {
		return ErrInvalidKey{Key: vx}
	}

	// SKP Vx :: Skip next instruction if key with the value of Vx is pressed.
	// SKNP Vx :: Skip next instruction if key with the value of Vx is not pressed.
	cpu.skipIf(keyboard.IsPressed(vx) == (ins.Suffix8() == 0x9E))

	return nil
}

func (cpu *Cpu) executeMisc(ins Instruction) error {
	if ins.Suffix8() == 0x0A {
		// LD Vx, K :: Wait for a key press, store the value of the key in Vx.
		if ins.X >= RegisterCount {
			return ErrInvalidRegister{Index: ins.X}
		}
		cpu.state = AwaitingKey{Register: ins.X}
		return nil
	}

	vx, err := cpu.Register(ins.X)
	if err != nil {
		return err
	}

	switch ins.Suffix8() {
	case 0x07:
		// LD Vx, DT :: Set Vx = delay timer value.
		return cpu.SetRegister(ins.X, cpu.Dt)

	case 0x15:
		// LD DT, Vx :: Set delay timer = Vx.
		cpu.Dt = vx

	case 0x18:
		// LD ST, Vx :: Set sound timer = Vx.
		cpu.St = vx

	case 0x1E:
		// ADD I, Vx :: Set I = I + Vx.
		cpu.I += uint16(vx)

	case 0x29:
		// LD F, Vx :: Set I = location of sprite for digit Vx.
		cpu.I = cpu.Memory.FontAddress(vx)

	case 0x33:
		// LD B, Vx :: Store BCD representation of Vx in memory locations I, I+1, and I+2.
		cpu.Memory.SetByte(cpu.I+0, vx/100)
		cpu.Memory.SetByte(cpu.I+1, (vx/10)%10)
		cpu.Memory.SetByte(cpu.I+2, vx%10)

	case 0x55:
		// LD [I], Vx :: Store registers V0 through Vx in memory starting at location I.
		for i := byte(0); i <= ins.X; i++ {
			v, err := cpu.Register(i)
			if err != nil {
				return err
			}
			cpu.Memory.SetByte(cpu.I+uint16(i), v)
		}
		if cpu.quirks.Has(QuirkMemoryMovesIndex) {
			cpu.I += uint16(ins.X) + 1
		}

	case 0x65:
		// LD Vx, [I] :: Read registers V0 through Vx from memory starting at location I.
		for i := byte(0); i <= ins.X; i++ {
			if err := cpu.SetRegister(i, cpu.Memory.Byte(cpu.I+uint16(i))); err != nil {
				return err
			}
		}
		if cpu.quirks.Has(QuirkMemoryMovesIndex) {
			cpu.I += uint16(ins.X) + 1
		}

	default:
		return cpu.unhandled(ins)
	}

	return nil
}

// draw XORs an n-byte sprite read from I onto the screen at (Vx, Vy).
// Sprites wrap around the edges of the screen. VF is set when any pixel is erased.
func (cpu *Cpu) draw(ins Instruction) error {
	vx, vy, err := cpu.operands(ins)
	if err != nil {
		return err
	}

	cpu.SetFlag(0)
	for row := 0; row < int(ins.N); row++ {
		sprite := cpu.Memory.Byte(cpu.I + uint16(row))
		y := (int(vy) + row) % ScreenHeight

		for col := 0; col < 8; col++ {
			x := (int(vx) + col) % ScreenWidth
			bit := (sprite>>(7-col))&0b1 > 0

			was := cpu.Screen.Pixel(x, y)
			cpu.Screen.SetPixel(x, y, bit)
			if was && !cpu.Screen.Pixel(x, y) {
				cpu.SetFlag(1)
			}
		}
	}
	cpu.isScreenDirty = true

	return nil
}
