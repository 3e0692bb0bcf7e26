package replay

import (
	"bytes"
	"fmt"
	"io"

	replayfb "github.com/cbodonnell/sweeper/flatbuffers/replay"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// StepsFormatVersion is written into every serialized steps payload
const StepsFormatVersion uint16 = 1

// SerializeSteps encodes steps as a compressed flatbuffer
func SerializeSteps(steps []types.TimeStep) ([]byte, error) {
	b := SerializeStepsFlatbuffer(steps)

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress steps: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DeserializeSteps decodes a payload produced by SerializeSteps
func DeserializeSteps(data []byte) ([]types.TimeStep, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed steps: %v", err)
	}

	steps, err := DeserializeStepsFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize steps: %v", err)
	}

	return steps, nil
}

func SerializeStepsFlatbuffer(steps []types.TimeStep) []byte {
	builder := flatbuffers.NewBuilder(0)

	stepOffsets := make([]flatbuffers.UOffsetT, 0, len(steps))
	for _, step := range steps {
		stepOffsets = append(stepOffsets, serializeTimeStepFlatbuffer(builder, step))
	}
	replayfb.StepsStartStepsVector(builder, len(stepOffsets))
	for i := len(stepOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(stepOffsets[i])
	}
	stepsVector := builder.EndVector(len(stepOffsets))

	replayfb.StepsStart(builder)
	replayfb.StepsAddVersion(builder, StepsFormatVersion)
	replayfb.StepsAddSteps(builder, stepsVector)
	root := replayfb.StepsEnd(builder)
	builder.Finish(root)

	return builder.FinishedBytes()
}

func serializeTimeStepFlatbuffer(builder *flatbuffers.Builder, step types.TimeStep) flatbuffers.UOffsetT {
	changeOffsets := make([]flatbuffers.UOffsetT, 0, len(step.Changes))
	for _, change := range step.Changes {
		replayfb.CellChangeStart(builder)
		replayfb.CellChangeAddX(builder, int32(change.Position.X))
		replayfb.CellChangeAddY(builder, int32(change.Position.Y))
		replayfb.CellChangeAddStatus(builder, byte(change.Status))
		replayfb.CellChangeAddAdjacentMines(builder, int32(change.AdjacentMines))
		changeOffsets = append(changeOffsets, replayfb.CellChangeEnd(builder))
	}
	replayfb.TimeStepStartChangesVector(builder, len(changeOffsets))
	for i := len(changeOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(changeOffsets[i])
	}
	changes := builder.EndVector(len(changeOffsets))

	replayfb.TimeStepStart(builder)
	replayfb.TimeStepAddElapsedMillis(builder, step.ElapsedMillis)
	replayfb.TimeStepAddStatus(builder, byte(step.Status))
	replayfb.TimeStepAddRemainingMines(builder, int32(step.RemainingMines))
	replayfb.TimeStepAddChanges(builder, changes)
	return replayfb.TimeStepEnd(builder)
}

func DeserializeStepsFlatbuffer(b []byte) (steps []types.TimeStep, err error) {
	// a truncated buffer makes the accessors index out of range
	defer func() {
		if r := recover(); r != nil {
			steps = nil
			err = fmt.Errorf("malformed steps buffer: %v", r)
		}
	}()

	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("steps buffer too short: %d bytes", len(b))
	}

	root := replayfb.GetRootAsSteps(b, 0)
	if root.Version() != StepsFormatVersion {
		return nil, fmt.Errorf("unsupported steps format version %d", root.Version())
	}

	steps = make([]types.TimeStep, 0, root.StepsLength())
	stepFlatbuffer := &replayfb.TimeStep{}
	changeFlatbuffer := &replayfb.CellChange{}
	for i := 0; i < root.StepsLength(); i++ {
		if !root.Steps(stepFlatbuffer, i) {
			return nil, fmt.Errorf("failed to read step %d", i)
		}
		status := types.GameStatus(stepFlatbuffer.Status())
		if !status.Valid() {
			return nil, fmt.Errorf("step %d has unknown game status %d", i, status)
		}

		step := types.TimeStep{
			ElapsedMillis:  stepFlatbuffer.ElapsedMillis(),
			Status:         status,
			RemainingMines: int(stepFlatbuffer.RemainingMines()),
			Changes:        make([]types.CellChange, 0, stepFlatbuffer.ChangesLength()),
		}
		for j := 0; j < stepFlatbuffer.ChangesLength(); j++ {
			if !stepFlatbuffer.Changes(changeFlatbuffer, j) {
				return nil, fmt.Errorf("failed to read change %d of step %d", j, i)
			}
			cellStatus := types.CellStatus(changeFlatbuffer.Status())
			if !cellStatus.Valid() {
				return nil, fmt.Errorf("change %d of step %d has unknown cell status %d", j, i, cellStatus)
			}
			step.Changes = append(step.Changes, types.NewCellChange(
				types.NewPosition(int(changeFlatbuffer.X()), int(changeFlatbuffer.Y())),
				cellStatus,
				int(changeFlatbuffer.AdjacentMines()),
			))
		}
		steps = append(steps, step)
	}

	return steps, nil
}
