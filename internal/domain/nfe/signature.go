package nfe

import (
	"bytes"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
)

// Verificação informativa do digest da assinatura XMLDSig da NF-e:
// compara o SHA-1 do <infNFe> canonicalizado (C14N) com o <DigestValue>
// declarado na assinatura. Serve de alerta de integridade no upload;
// nunca bloqueia o processamento (a validade jurídica é da SEFAZ).

// SignatureCheck resultado da verificação de digest.
type SignatureCheck int

const (
	// SignatureAbsent documento sem assinatura ou sem DigestValue.
	SignatureAbsent SignatureCheck = iota
	// SignatureDigestOK digest declarado confere com o conteúdo.
	SignatureDigestOK
	// SignatureDigestMismatch digest declarado não confere (possível adulteração).
	SignatureDigestMismatch
)

// CheckSignatureDigest verifica o digest SHA-1 do <infNFe> contra a assinatura.
func CheckSignatureDigest(raw []byte) SignatureCheck {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return SignatureAbsent
	}
	root := doc.Root()
	if root == nil {
		return SignatureAbsent
	}

	digestEl := root.FindElement("//Signature/SignedInfo/Reference/DigestValue")
	infEl := root.FindElement("//infNFe")
	if digestEl == nil || infEl == nil {
		return SignatureAbsent
	}
	declared := digestEl.Text()
	if declared == "" {
		return SignatureAbsent
	}

	canonical, err := canonicalizeElement(infEl)
	if err != nil {
		return SignatureAbsent
	}
	sum := sha1.Sum(canonical)
	if base64.StdEncoding.EncodeToString(sum[:]) == declared {
		return SignatureDigestOK
	}
	return SignatureDigestMismatch
}

// canonicalizeElement serializa a subárvore do elemento e aplica C14N.
// O xmlns padrão da NF-e é reinjetado quando a declaração vive num ancestral,
// para que a forma canônica corresponda à que foi assinada.
func canonicalizeElement(el *etree.Element) ([]byte, error) {
	copied := el.Copy()
	if copied.SelectAttr("xmlns") == nil {
		copied.CreateAttr("xmlns", NamespaceNFe)
	}
	sub := etree.NewDocument()
	sub.SetRoot(copied)
	serialized, err := sub.WriteToBytes()
	if err != nil {
		return nil, err
	}
	dec := xml.NewDecoder(bytes.NewReader(serialized))
	return c14n.Canonicalize(dec)
}
