package mcp

func emptySchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func idSchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"id"},
	}
}

func floorSchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"floor_id": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
	}
}

var pointSchema = map[string]any{
	"type":        "object",
	"description": "Center in canvas percent (0-100 on each axis)",
	"properties": map[string]any{
		"x": map[string]any{"type": "number"},
		"y": map[string]any{"type": "number"},
	},
	"required": []string{"x", "y"},
}

var sizeSchema = map[string]any{
	"type":        "object",
	"description": "Width and height in grid units",
	"properties": map[string]any{
		"w": map[string]any{"type": "number"},
		"h": map[string]any{"type": "number"},
	},
	"required": []string{"w", "h"},
}

// furnitureFields lists the editable fields shared by update_pending and
// update_furniture.
func furnitureFields() map[string]any {
	return map[string]any{
		"name":             map[string]any{"type": "string", "description": "Display name; blank keeps the current name"},
		"floor_id":         map[string]any{"type": "string", "description": "Floor the item belongs to"},
		"position":         pointSchema,
		"size":             sizeSchema,
		"capacity":         map[string]any{"type": "integer", "description": "Regular seats"},
		"extra_seat_limit": map[string]any{"type": "integer", "description": "Extra seats that may be added"},
		"occupied":         map[string]any{"type": "integer", "description": "Guests currently seated"},
		"tags":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"description":      map[string]any{"type": "string"},
		"available":        map[string]any{"type": "boolean", "description": "Open to walk-in guests"},
	}
}

func pointerSchema(withID bool) map[string]any {
	props := map[string]any{
		"x":        map[string]any{"type": "number", "description": "Pointer x in canvas percent"},
		"y":        map[string]any{"type": "number", "description": "Pointer y in canvas percent"},
		"client_x": map[string]any{"type": "number", "description": "Pointer x in client pixels (with viewport)"},
		"client_y": map[string]any{"type": "number", "description": "Pointer y in client pixels (with viewport)"},
		"viewport": map[string]any{
			"type":        "object",
			"description": "On-screen box of the canvas in client pixels",
			"properties": map[string]any{
				"left":   map[string]any{"type": "number"},
				"top":    map[string]any{"type": "number"},
				"width":  map[string]any{"type": "number"},
				"height": map[string]any{"type": "number"},
			},
		},
	}
	schema := map[string]any{"type": "object", "properties": props}
	if withID {
		props["id"] = map[string]any{"type": "string", "description": "Item to drag: the pending item, or a committed item while moving"}
		schema["required"] = []string{"id"}
	}
	return schema
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Layout
		{
			Name:        "get_layout",
			Description: "Get the current layout: mode, edit sub-state, items, pending item, picks, overlaps and which confirms are enabled",
			InputSchema: emptySchema(),
		},
		{
			Name:        "set_mode",
			Description: "Switch between business, edit and view mode. Leaving edit mode cancels any active flow",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mode": map[string]any{
						"type": "string",
						"enum": []string{"business", "edit", "view"},
					},
				},
				"required": []string{"mode"},
			},
		},

		// Add flow
		{
			Name:        "start_add",
			Description: "Begin adding a table or seat (edit mode, no active flow). Creates a pending item with defaults for omitted fields",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"kind": map[string]any{
						"type": "string",
						"enum": []string{"table", "seat"},
					},
					"floor_id":         map[string]any{"type": "string"},
					"name":             map[string]any{"type": "string"},
					"position":         pointSchema,
					"size":             sizeSchema,
					"capacity":         map[string]any{"type": "integer"},
					"extra_seat_limit": map[string]any{"type": "integer"},
					"tags":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"description":      map[string]any{"type": "string"},
					"available":        map[string]any{"type": "boolean"},
				},
			},
		},
		{
			Name:        "update_pending",
			Description: "Edit the pending item. Positions snap to the grid and clamp to the canvas",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": furnitureFields(),
			},
		},
		{
			Name:        "confirm_add",
			Description: "Commit the pending item. Ignored while it overlaps another item",
			InputSchema: emptySchema(),
		},
		{
			Name:        "cancel_add",
			Description: "Discard the pending item",
			InputSchema: emptySchema(),
		},

		// Delete flow
		{
			Name:        "start_delete",
			Description: "Begin multi-select delete with an empty pick list",
			InputSchema: emptySchema(),
		},
		{
			Name:        "toggle_delete_pick",
			Description: "Add or remove an item from the delete pick list",
			InputSchema: idSchema("Item to toggle"),
		},
		{
			Name:        "confirm_delete",
			Description: "Delete every picked item. Ignored when nothing is picked",
			InputSchema: emptySchema(),
		},
		{
			Name:        "cancel_delete",
			Description: "Leave delete selection without deleting anything",
			InputSchema: emptySchema(),
		},

		// Move flow
		{
			Name:        "start_move",
			Description: "Back up the layout and begin moving items",
			InputSchema: emptySchema(),
		},
		{
			Name:        "select_mover",
			Description: "Choose the item to move",
			InputSchema: idSchema("Item to move"),
		},
		{
			Name:        "confirm_move",
			Description: "Keep the moved positions. Ignored while any two items overlap",
			InputSchema: emptySchema(),
		},
		{
			Name:        "cancel_move",
			Description: "Restore every item to its position before the move began",
			InputSchema: emptySchema(),
		},

		// Drag
		{
			Name:        "pointer_down",
			Description: "Start dragging the pending item, or a committed item while moving",
			InputSchema: pointerSchema(true),
		},
		{
			Name:        "pointer_move",
			Description: "Drag the active item so it keeps its grab offset from the pointer",
			InputSchema: pointerSchema(false),
		},
		{
			Name:        "pointer_up",
			Description: "End the active drag",
			InputSchema: emptySchema(),
		},

		// Commands
		{
			Name:        "rotate_layout",
			Description: "Rotate the whole layout a quarter turn (edit mode, no active flow)",
			InputSchema: emptySchema(),
		},
		{
			Name:        "adjust_occupancy",
			Description: "Seat (positive delta) or release (negative delta) guests at an item in business mode. Clamped to capacity plus extra seats",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":    map[string]any{"type": "string"},
					"delta": map[string]any{"type": "integer"},
				},
				"required": []string{"id", "delta"},
			},
		},
		{
			Name:        "set_available",
			Description: "Open or close an item to walk-in guests",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":        map[string]any{"type": "string"},
					"available": map[string]any{"type": "boolean"},
				},
				"required": []string{"id", "available"},
			},
		},
		{
			Name:        "update_furniture",
			Description: "Change a committed item's fields (edit mode, no active flow). The id never changes",
			InputSchema: func() map[string]any {
				props := furnitureFields()
				props["id"] = map[string]any{"type": "string"}
				return map[string]any{
					"type":       "object",
					"properties": props,
					"required":   []string{"id"},
				}
			}(),
		},

		// Exchange
		{
			Name:        "import_records",
			Description: "Replace the layout with records, given as objects or as a layout CSV file. A crop block in the file updates the default floor's background crop",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"records": map[string]any{
						"type":        "array",
						"description": "Records with string fields (table_id, index, name, left, top, width, height, capacity, occupied, extraSeatLimit, tags, description, updateTime, available, floor)",
						"items":       map[string]any{"type": "object"},
					},
					"csv": map[string]any{
						"type":        "string",
						"description": "Layout file content",
					},
				},
			},
		},
		{
			Name:        "export_records",
			Description: "Export the layout ordered by floor and ordinal",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"format": map[string]any{
						"type": "string",
						"enum": []string{"json", "csv"},
					},
				},
			},
		},

		// Reporting
		{
			Name:        "get_stats",
			Description: "Count tables, capacity, occupied seats, occupancy rate and empty/partial/full tables. Seats are excluded",
			InputSchema: floorSchema("Limit to one floor (omit for all)"),
		},
		{
			Name:        "list_available",
			Description: "List tables open to walk-ins that have seating capacity, sorted by name",
			InputSchema: floorSchema("Limit to one floor (omit for all)"),
		},
		{
			Name:        "get_recent_activity",
			Description: "List recent layout changes, newest first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"furniture_id": map[string]any{"type": "string"},
					"session_id":   map[string]any{"type": "string"},
					"type":         map[string]any{"type": "string"},
					"limit":        map[string]any{"type": "integer"},
					"offset":       map[string]any{"type": "integer"},
				},
			},
		},

		// Floors
		{
			Name:        "get_floor_settings",
			Description: "Get background and display settings of a floor (defaults when none saved)",
			InputSchema: floorSchema("Floor id (omit for the default floor)"),
		},
		{
			Name:        "save_floor_settings",
			Description: "Save background and display settings of a floor",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"floor_id": map[string]any{"type": "string"},
					"crop": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"x":      map[string]any{"type": "integer"},
							"y":      map[string]any{"type": "integer"},
							"width":  map[string]any{"type": "integer"},
							"height": map[string]any{"type": "integer"},
						},
					},
					"zoom":              map[string]any{"type": "number"},
					"rotation":          map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
					"background_hidden": map[string]any{"type": "boolean"},
					"grid_hidden":       map[string]any{"type": "boolean"},
					"show_seat_index":   map[string]any{"type": "boolean"},
					"title":             map[string]any{"type": "string"},
					"logo":              map[string]any{"type": "string"},
				},
			},
		},
	}
}
