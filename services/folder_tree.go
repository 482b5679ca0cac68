package services

import (
	"sort"

	"document-portal-api/models"
)

// FolderNode is one display node: a folder plus the documents directly
// inside it.
type FolderNode struct {
	Folder    models.DocumentFolder `json:"folder"`
	Documents []models.Document     `json:"documents"`
}

// BuildFolderTree builds the one-level child set under parentID (root
// when nil) from flat folder/document slices. It never mutates its
// inputs. Nodes are ordered by level, then display order, then name.
func BuildFolderTree(folders []models.DocumentFolder, documents []models.Document, parentID *int) []FolderNode {
	docsByFolder := make(map[int][]models.Document, len(folders))
	for _, doc := range documents {
		if doc.FolderID == nil {
			continue
		}
		docsByFolder[*doc.FolderID] = append(docsByFolder[*doc.FolderID], doc)
	}

	nodes := make([]FolderNode, 0, len(folders))
	for _, folder := range folders {
		if !sameParent(folder.ParentID, parentID) {
			continue
		}
		docs := docsByFolder[folder.FolderID]
		if docs == nil {
			docs = []models.Document{}
		}
		nodes = append(nodes, FolderNode{Folder: folder, Documents: docs})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Folder, nodes[j].Folder
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.Name < b.Name
	})
	return nodes
}

func sameParent(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
