package service

import (
	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
)

// MaxMenuDepth bounds the depth of the assembled hierarchy.
const MaxMenuDepth = 16

// BuildMenuTree nests a flat, display-ordered list of menus into a forest.
// Siblings keep the order of the input. Menus whose parent is absent are
// dropped, as are menus on a parent cycle since no root reaches them.
func BuildMenuTree(menus []models.Menu, maxDepth int) []dto.MenuNode {
	if maxDepth <= 0 {
		maxDepth = MaxMenuDepth
	}

	known := make(map[string]struct{}, len(menus))
	for _, menu := range menus {
		known[menu.ID] = struct{}{}
	}

	children := make(map[string][]int, len(menus))
	roots := make([]int, 0)
	for i, menu := range menus {
		if menu.ParentID == nil || *menu.ParentID == "" {
			roots = append(roots, i)
			continue
		}
		if _, ok := known[*menu.ParentID]; ok {
			children[*menu.ParentID] = append(children[*menu.ParentID], i)
		}
	}

	visited := make(map[string]struct{}, len(menus))
	var build func(index, depth int) dto.MenuNode
	build = func(index, depth int) dto.MenuNode {
		menu := menus[index]
		visited[menu.ID] = struct{}{}
		node := dto.MenuNode{MenuResponse: dto.NewMenuResponse(menu), Children: []dto.MenuNode{}}
		if depth >= maxDepth {
			return node
		}
		for _, child := range children[menu.ID] {
			if _, seen := visited[menus[child].ID]; seen {
				continue
			}
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}

	forest := make([]dto.MenuNode, 0, len(roots))
	for _, root := range roots {
		if _, seen := visited[menus[root].ID]; seen {
			continue
		}
		forest = append(forest, build(root, 1))
	}
	return forest
}
