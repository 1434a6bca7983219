package retry

import "fmt"

// Op names a data-access operation for user-facing failure messages.
type Op string

const (
	OpCreate Op = "create"
	OpRead   Op = "read"
	OpUpdate Op = "update"
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
	OpUpload Op = "upload"
)

// opLabels holds the French phrasing for each operation. The public site and
// the back-office are French-language, so failure text shown to editors is
// produced here rather than localized downstream.
var opLabels = map[Op]string{
	OpCreate: "la création",
	OpRead:   "la lecture",
	OpUpdate: "la mise à jour",
	OpUpsert: "l'enregistrement",
	OpDelete: "la suppression",
	OpUpload: "le téléversement",
}

// kindLabels holds the French description of each error kind.
var kindLabels = map[Kind]string{
	KindTransport:  "erreur de connexion à la base de données",
	KindNotFound:   "l'enregistrement demandé est introuvable",
	KindDuplicate:  "un enregistrement identique existe déjà",
	KindNotNull:    "un champ obligatoire est manquant",
	KindForeignKey: "l'enregistrement est référencé par d'autres données",
	KindPermission: "opération non autorisée",
}

// Describe builds the user-facing French description of a failed operation,
// e.g. "la création dans documents a échoué : un enregistrement identique
// existe déjà". It never alters the error itself; callers keep the original
// for wrapping and logging.
func Describe(op Op, table string, err error) string {
	label, ok := opLabels[op]
	if !ok {
		label = "l'opération"
	}
	reason, ok := kindLabels[Classify(err)]
	if !ok {
		reason = "erreur inattendue"
	}
	return fmt.Sprintf("%s dans %s a échoué : %s", label, table, reason)
}
