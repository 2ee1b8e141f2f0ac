package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `seatmap edits a café floor plan: tables and seats placed on a 100x100 percent canvas snapped to a grid.

Core concepts:
- Item: a table or seat with a floor, ordinal, center position (percent), size (grid units), capacity and occupancy.
- Mode: business (seat guests), edit (change the layout) or view (read only, display rotation applies).
- Flow: inside edit mode at most one of add, delete or move is active. Other edit commands wait until it is confirmed or cancelled.
- Overlap: two items may never overlap once committed. Confirm buttons are disabled while an overlap exists.

Default workflow:
1) Orient: call get_layout. It returns the mode, sub-state, items, overlaps and which confirms are enabled.
2) Edit: set_mode edit, then start_add / start_delete / start_move and finish with the matching confirm_* or cancel_*.
3) Drag: pointer_down on the pending item (or a mover), pointer_move, pointer_up.
4) Serve: set_mode business, then adjust_occupancy and set_available.
5) Exchange: export_records / import_records (json records or the layout file).

Commands that do not apply in the current state are ignored: the response has applied=false and the layout unchanged.

Docs:
- seatmap://docs/index
- seatmap://docs/concepts
- seatmap://docs/workflows/editing
- seatmap://docs/file-format
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "seatmap://docs/index",
		Name:        "docs_index",
		Title:       "seatmap docs index",
		Description: "Entry point for agent-facing docs.",
		Content: `# seatmap: Agent Docs Index

## Quick start

1. ` + "`get_layout`" + ` to see the current floor plan.
2. ` + "`set_mode`" + ` to edit (layout changes) or business (guests).
3. Start one flow, adjust, then confirm or cancel it.

## Docs

- ` + "`seatmap://docs/concepts`" + ` covers coordinates, grid, overlap and modes.
- ` + "`seatmap://docs/workflows/editing`" + ` walks through add, delete and move.
- ` + "`seatmap://docs/file-format`" + ` describes the layout file used by import and export.

## Limitations

- One layout is edited at a time; every client shares it.
- Rotation turns the whole layout. Single items cannot be rotated.
`,
	},
	{
		URI:         "seatmap://docs/concepts",
		Name:        "docs_concepts",
		Title:       "seatmap concepts",
		Description: "Coordinates, grid, overlap rules and modes.",
		Content: `# Concepts

## Coordinates

- Positions are item centers in percent of the canvas, 0..100 on each axis.
- Sizes are in grid units. One grid unit is 100/columns percent wide and 100/rows percent tall.
- Every position is snapped to the nearest grid step and clamped so the item stays on the canvas.

## Overlap

Two items overlap when their boxes intersect by more than a tiny tolerance. Touching edges is fine.
A pending item can be confirmed only when it overlaps nothing. A move can be confirmed only when no two items overlap.

## Ids and ordinals

- Tables are numbered 1, 2, 3 per floor and named A, B, C by default.
- Seats are numbered the same way and named by their number.
- Ids are derived from floor and ordinal when an item is created and never change afterwards.

## Modes

| Mode | Allowed |
|------|---------|
| business | adjust_occupancy, set_available |
| edit | add, delete, move flows, rotate_layout, update_furniture, set_available |
| view | read only; items are shown turned by the configured view rotation |

Leaving edit mode cancels the active flow. A cancelled move restores every item.
`,
	},
	{
		URI:         "seatmap://docs/workflows/editing",
		Name:        "docs_workflow_editing",
		Title:       "Editing workflow",
		Description: "Add, delete and move items step by step.",
		Content: `# Editing

## Add

1. ` + "`start_add`" + ` with kind table or seat. Omitted fields take defaults.
2. ` + "`update_pending`" + ` or drag the pending item until ` + "`can_confirm_add`" + ` is true.
3. ` + "`confirm_add`" + ` to commit, or ` + "`cancel_add`" + `.

## Delete

1. ` + "`start_delete`" + `.
2. ` + "`toggle_delete_pick`" + ` for each item.
3. ` + "`confirm_delete`" + ` removes all picks at once. ` + "`cancel_delete`" + ` keeps everything.

## Move

1. ` + "`start_move`" + ` backs up the layout.
2. ` + "`select_mover`" + ` or ` + "`pointer_down`" + ` on any item, then drag it. Several items can be moved in one flow.
3. ` + "`confirm_move`" + ` once ` + "`overlaps`" + ` is empty, or ` + "`cancel_move`" + ` to restore the backup.

## Errors

If the store rejects a change the layout is rolled back and the tool returns PERSIST_FAILED. Retry once the store is back.
`,
	},
	{
		URI:         "seatmap://docs/file-format",
		Name:        "docs_file_format",
		Title:       "Layout file format",
		Description: "CSV layout file read by import_records and written by export_records.",
		Content: `# Layout file

A UTF-8 CSV file with CRLF line endings. A leading byte order mark is ignored.

` + "```" + `
cropX,cropY,cropWidth,cropHeight
0,0,1200,800

table_id,index,name,left,top,width,height,capacity,occupied,extraSeatLimit,tags,description,updateTime,available,floor
1F-1,1,A,10,10,2,2,4,0,2,"window,sofa",,,true,1F
` + "```" + `

- The crop block is optional and sets the background crop of the default floor.
- ` + "`left`" + ` and ` + "`top`" + ` are center coordinates in percent.
- ` + "`tags`" + ` are separated by commas.
- ` + "`available`" + ` is true for "true" or "1".
- Rows repeating an earlier table_id are skipped. Missing ids and ordinals are assigned.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
